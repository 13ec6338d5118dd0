package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/checksum"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/config"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/logging"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/lookup"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/params"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/progress"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/services"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

const envAPIKey = "NCBI_API_KEY"

var submitCmd = &cobra.Command{
	Use:   "submit <PRJNAxxxxxx> <PATH|FILE>",
	Short: "Build SRA submission archives from a table or MiSeq run",
	Long: `Submit reads sample metadata and writes, per sample, an experiment, a run
and a submission document plus a tar archive bundling them.

Arguments:
  PRJNAxxxxxx   BioProject accession for every experiment. Use "-" to take it
                from each row's project column or the sample sheet's
                Sample_Project.
  PATH|FILE     A MiSeq output directory (RunParameters.xml, SampleSheet.csv,
                Data/Intensities/BaseCalls) or a delimited metadata table.
                Run 'sraqs template' for a table with the expected header.

Repeated sample names get .02, .03, ... suffixes unless merged with -g, in
which case all their runs share one experiment. When a merged sample already
has a MiSeq experiment in SRA (found through NCBI E-utilities), the new runs
are attached to it instead.

Submitter identity precedence: flag > sraqs.yaml > $USER/$LOGNAME and
$USER_PRINCIPAL_NAME. A .env file in the working directory is loaded first.

Examples:
  # Table input, two samples merged into one experiment each
  sraqs submit PRJNA000001 samples.txt -o out -g "CFSAN001 CFSAN002"

  # MiSeq run, comma separated table, 2x150 reads
  sraqs submit PRJNA000001 /data/MiSeq/150101_M01234_0001 -r 150

  # Override a column for every record
  sraqs submit PRJNA000001 samples.txt --field organism="Salmonella enterica"`,
	Args: RequireSubmitArgs,
	RunE: runSubmit,
}

type submitFlagValues struct {
	output        string
	holdDate      string
	delimiter     string
	name          string
	email         string
	libraryLength int
	readLength    int
	merge         []string
	fields        []string
	noLookup      bool
	lookupTimeout time.Duration
	lookupRetries int
	verifyGzip    bool
	configPath    string
}

var submitFlags submitFlagValues

func init() {
	rootCmd.AddCommand(submitCmd)
	addSubmitFlags(submitCmd, &submitFlags)
}

func addSubmitFlags(cmd *cobra.Command, v *submitFlagValues) {
	f := cmd.Flags()
	f.StringVarP(&v.output, "output", "o", "",
		"Output directory, created if it doesn't already exist (default: current directory)")
	f.StringVarP(&v.holdDate, "hold-date", "d", "",
		"Hold this submission until YYYY-MM-DD. SRA allows up to a one-year hold (default: today)")
	f.StringVarP(&v.delimiter, "delimiter", "l", "",
		`Table column delimiter: a single character, "\t"/"tab" or "comma" (default: tab)`)
	f.StringVarP(&v.name, "name", "n", "", "Submitter name")
	f.StringVarP(&v.email, "email", "e", "", "Submitter email")
	f.IntVarP(&v.libraryLength, "library-length", "m", sraqs.DefaultLibraryLength,
		"Nominal library insert length, used when a row has none")
	f.IntVarP(&v.readLength, "read-length", "r", 0,
		"Cycles per read (default: 250, spot length 502)")
	f.StringArrayVarP(&v.merge, "merge", "g", nil,
		`Merge runs of these sample names into one experiment; repeatable or space separated. "all" merges every sample`)
	f.StringArrayVar(&v.fields, "field", nil,
		"Set a record field on every record, replacing row values (repeatable)\n"+
			"Example: --field strain=LT2 --field organism=\"Escherichia coli\"")
	f.BoolVar(&v.noLookup, "no-lookup", false,
		"Do not query NCBI for prior experiments of merged samples")
	f.DurationVar(&v.lookupTimeout, "lookup-timeout", sraqs.DefaultLookupTimeout,
		"Timeout of each NCBI E-utilities request")
	f.IntVar(&v.lookupRetries, "lookup-retries", sraqs.DefaultLookupRetries,
		"Retries after a transient NCBI E-utilities failure")
	f.BoolVar(&v.verifyGzip, "verify-gzip", false,
		"Decompress read files while hashing them to detect corrupt uploads")
	f.StringVar(&v.configPath, "config", "",
		"Path to sraqs.yaml (default: ./sraqs.yaml when present)")
}

// submitSettings is everything a batch needs, resolved from flags,
// environment and sraqs.yaml.
type submitSettings struct {
	Submission sraqs.SubmissionConfig
	Lookup     lookup.Config
}

// loadProjectConfig reads --config, or sraqs.yaml in the working directory
// when present.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: load %s: %w", sraqs.ErrInvalidConfig, path, err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", sraqs.ErrInvalidConfig, config.ConfigFileName, err)
	}
	return cfg, nil
}

// buildSubmitSettings resolves the batch settings from flags (cmd tracks
// which were set), the project config, env and the clock.
func buildSubmitSettings(cmd *cobra.Command, args []string, projectCfg *config.ProjectConfig, env envLookup, now time.Time, logger sraqs.Logger) (submitSettings, error) {
	flags := cmd.Flags()
	if projectCfg == nil {
		projectCfg = &config.ProjectConfig{}
	}

	project := strings.TrimSpace(args[0])
	if project == "-" {
		project = ""
	}

	output := submitFlags.output
	if output == "" {
		wd, err := os.Getwd()
		if err != nil {
			return submitSettings{}, fmt.Errorf("resolve working directory: %w", err)
		}
		output = wd
	}

	name, err := resolveSubmitterName(submitFlags.name, projectCfg, env, logger)
	if err != nil {
		return submitSettings{}, err
	}
	email, err := resolveSubmitterEmail(submitFlags.email, projectCfg, env, logger)
	if err != nil {
		return submitSettings{}, err
	}

	delimiter, err := projectCfg.DelimiterRune()
	if err != nil {
		return submitSettings{}, fmt.Errorf("%w: %s: %w", sraqs.ErrInvalidConfig, config.ConfigFileName, err)
	}
	if flags.Changed("delimiter") {
		if delimiter, err = config.ParseDelimiter(submitFlags.delimiter); err != nil {
			return submitSettings{}, fmt.Errorf("%w: --delimiter: %w", sraqs.ErrInvalidConfig, err)
		}
	}

	libraryLength := submitFlags.libraryLength
	if !flags.Changed("library-length") && projectCfg.LibraryLength > 0 {
		libraryLength = projectCfg.LibraryLength
	}
	readLength := submitFlags.readLength
	if !flags.Changed("read-length") && projectCfg.ReadLength > 0 {
		readLength = projectCfg.ReadLength
	}

	merge := submitFlags.merge
	if !flags.Changed("merge") {
		merge = projectCfg.Merge
	}

	overrides, err := params.ParseKeyValuePairs(submitFlags.fields)
	if err != nil {
		return submitSettings{}, fmt.Errorf("%w: --field: %w", sraqs.ErrInvalidConfig, err)
	}
	if len(overrides) > 0 {
		logger.Verbose("--field overrides %d record field(s)", len(overrides))
	}

	lookupCfg, err := buildLookupConfig(flags.Changed, projectCfg, env, email)
	if err != nil {
		return submitSettings{}, err
	}

	return submitSettings{
		Submission: sraqs.SubmissionConfig{
			Project:        project,
			InputPath:      args[1],
			OutputDir:      output,
			SubmitterName:  name,
			SubmitterEmail: email,
			HoldDate:       resolveHoldDate(submitFlags.holdDate, projectCfg, now, logger),
			LibraryLength:  libraryLength,
			ReadLength:     readLength,
			Delimiter:      delimiter,
			Merge:          merge,
			Defaults:       projectCfg.Fields,
			Overrides:      overrides,
			VerifyGzip:     submitFlags.verifyGzip,
		},
		Lookup: lookupCfg,
	}, nil
}

func buildLookupConfig(changed func(string) bool, projectCfg *config.ProjectConfig, env envLookup, email string) (lookup.Config, error) {
	lc := projectCfg.Lookup

	timeout, err := projectCfg.LookupTimeout(sraqs.DefaultLookupTimeout)
	if err != nil {
		return lookup.Config{}, fmt.Errorf("%w: %w", sraqs.ErrInvalidConfig, err)
	}
	if changed("lookup-timeout") {
		timeout = submitFlags.lookupTimeout
	}

	retries := submitFlags.lookupRetries
	if !changed("lookup-retries") && lc.Retries != nil {
		retries = *lc.Retries
	}

	apiKey := lc.APIKey
	if v, ok := env(envAPIKey); ok && strings.TrimSpace(v) != "" {
		apiKey = v
	}

	contact := lc.Email
	if contact == "" {
		contact = email
	}
	tool := lc.Tool
	if tool == "" {
		tool = "sraqs"
	}

	return lookup.Config{
		Enabled: !submitFlags.noLookup && (lc.Enabled == nil || *lc.Enabled),
		Eutils: lookup.EutilsOptions{
			BaseURL:         lc.BaseURL,
			APIKey:          apiKey,
			Tool:            tool,
			Email:           contact,
			InstrumentModel: projectCfg.InstrumentModel,
		},
		Timeout:   timeout,
		Retries:   retries,
		CacheSize: lc.CacheSize,
	}, nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	projectCfg, err := loadProjectConfig(submitFlags.configPath)
	if err != nil {
		return err
	}

	settings, err := buildSubmitSettings(cmd, args, projectCfg, os.LookupEnv, time.Now(), logger)
	if err != nil {
		return err
	}

	accessionLookup, err := lookup.New(settings.Lookup, logger)
	if err != nil {
		return err
	}

	reporter := progress.Auto()

	svc := services.NewSubmissionService(
		filesystem.NewOSFileSystem(),
		checksum.New(checksum.WithProgress(reporter.Start)),
		accessionLookup,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := svc.Submit(ctx, settings.Submission)
	if report != nil {
		fmt.Fprint(cmd.OutOrStdout(), renderSummary(report, stdoutIsTerminal()))
	}
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	return nil
}
