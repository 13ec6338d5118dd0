// Package sradoc builds the three SRA XML documents submitted for a sample:
// the experiment, the run set and the submission.
//
// Documents are typed trees marshalled by encoding/xml, so every value is
// escaped by the serializer. Builders read canonical fields from a
// sraqs.Record and fail with a *sraqs.FillError naming the document, the
// sample and the absent field. Rendering is pure: the same record and
// arguments always produce the same bytes.
package sradoc
