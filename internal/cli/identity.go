package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/config"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// envLookup matches os.LookupEnv so tests can supply a fixed environment.
type envLookup func(key string) (string, bool)

const envEmail = "USER_PRINCIPAL_NAME"

var envNameKeys = []string{"USER", "LOGNAME"}

// resolveSubmitterName returns the flag value, then sraqs.yaml, then the
// login name from the environment.
func resolveSubmitterName(flag string, cfg *config.ProjectConfig, env envLookup, logger sraqs.Logger) (string, error) {
	if name := strings.TrimSpace(flag); name != "" {
		return name, nil
	}
	if cfg != nil && strings.TrimSpace(cfg.Submitter.Name) != "" {
		return strings.TrimSpace(cfg.Submitter.Name), nil
	}
	for _, key := range envNameKeys {
		if v, ok := env(key); ok && strings.TrimSpace(v) != "" {
			logger.Info("Name not specified; got '%s' from shell environment", v)
			return strings.TrimSpace(v), nil
		}
	}
	return "", fmt.Errorf(`%w: no name given and $USER/$LOGNAME vars not set. Specify submitter name with -n "My Name"`, sraqs.ErrInvalidConfig)
}

// resolveSubmitterEmail returns the flag value, then sraqs.yaml, then
// $USER_PRINCIPAL_NAME.
func resolveSubmitterEmail(flag string, cfg *config.ProjectConfig, env envLookup, logger sraqs.Logger) (string, error) {
	if email := strings.TrimSpace(flag); email != "" {
		return email, nil
	}
	if cfg != nil && strings.TrimSpace(cfg.Submitter.Email) != "" {
		return strings.TrimSpace(cfg.Submitter.Email), nil
	}
	if v, ok := env(envEmail); ok && strings.TrimSpace(v) != "" {
		logger.Info("Email not specified; got '%s' from shell environment", v)
		return strings.TrimSpace(v), nil
	}
	return "", fmt.Errorf("%w: no email given and $%s var not set. Specify submitter email with -e email@email.email", sraqs.ErrInvalidConfig, envEmail)
}

// resolveHoldDate defaults to today.
func resolveHoldDate(flag string, cfg *config.ProjectConfig, now time.Time, logger sraqs.Logger) string {
	if d := strings.TrimSpace(flag); d != "" {
		return d
	}
	if cfg != nil && strings.TrimSpace(cfg.HoldDate) != "" {
		return strings.TrimSpace(cfg.HoldDate)
	}
	d := now.Format(sraqs.HoldDateLayout)
	logger.Info("No HOLD date specified, using default: %s", d)
	return d
}
