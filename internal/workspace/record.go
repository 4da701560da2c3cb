package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Record sections, in rendering order.
const (
	SectionRepository = "Repository"
	SectionFeature    = "Feature"
	SectionRun        = "Run"
	SectionTools      = "Tools"
)

// ToolsKey holds the tool availability map in a Record.
const ToolsKey = "TOOLS"

// Field is one key of the flat output record.
type Field struct {
	Key     string
	Section string
	// Value is a string, bool, []string, map[string]bool or nil (unresolved).
	Value any
	// Path marks values that get a " (missing)" suffix for humans.
	Path bool
}

// Human renders the value for "KEY: value" output.
func (f Field) Human() string {
	switch v := f.Value.(type) {
	case nil:
		return Unresolved
	case string:
		if f.Path {
			return DisplayPath(v)
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case []string:
		if len(v) == 0 {
			return "none"
		}
		return strings.Join(v, ", ")
	case map[string]bool:
		parts := make([]string, 0, len(v))
		for _, name := range slices.Sorted(maps.Keys(v)) {
			parts = append(parts, name+"="+strconv.FormatBool(v[name]))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Record is the flat, ordered output record shared by JSON and human output.
// JSON keys keep field order.
type Record []Field

// Get returns the field with key.
func (r Record) Get(key string) (Field, bool) {
	for _, f := range r {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// MarshalJSON encodes the record as a single object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Record renders the repository and feature fields.
func (f *Feature) Record() Record {
	rec := Record{
		{Key: "REPO_ROOT", Section: SectionRepository, Value: f.RepoRoot},
		{Key: "CURRENT_BRANCH", Section: SectionRepository, Value: f.CurrentFeature},
		{Key: "HAS_GIT", Section: SectionRepository, Value: f.HasVersionControl},
	}
	rec = append(rec, f.featureFields()...)
	return rec
}

func (f *Feature) featureFields() Record {
	fields := make(Record, 0, len(f.Artifacts)+1)
	fields = append(fields, Field{Key: "FEATURE_DIR", Section: SectionFeature, Value: optionalPath(f.FeatureDir), Path: true})
	for _, a := range f.Artifacts {
		fields = append(fields, Field{Key: a.Key, Section: SectionFeature, Value: optionalPath(a.Path), Path: true})
	}
	return fields
}

// Record renders every field of the environment for its mode.
func (e *Environment) Record() Record {
	rec := Record{
		{Key: "REPO_ROOT", Section: SectionRepository, Value: e.RepoRoot},
		{Key: "CURRENT_BRANCH", Section: SectionRepository, Value: e.CurrentFeature},
		{Key: "HAS_GIT", Section: SectionRepository, Value: e.HasVersionControl},
		{Key: "HAS_CONFIG", Section: SectionRepository, Value: e.HasConfig},
	}
	rec = append(rec, e.featureFields()...)

	switch e.Mode {
	case ModeCleanup:
		rec = append(rec,
			Field{Key: "CLEANUP_REPORT", Section: SectionRun, Value: e.ReportPath},
			Field{Key: "CLEANUP_TYPE", Section: SectionRun, Value: e.Options.CleanupType},
			Field{Key: "DRY_RUN", Section: SectionRun, Value: e.Options.DryRun()},
			Field{Key: "ARCHIVE_ONLY", Section: SectionRun, Value: e.Options.ArchiveOnly},
			Field{Key: "BACKUP_BRANCH", Section: SectionRun, Value: e.BackupBranch},
			Field{Key: "PROJECT_LANGUAGES", Section: SectionRun, Value: nonNil(e.ProjectLanguages)},
		)
	default:
		rec = append(rec, Field{Key: "VALIDATION_REPORT", Section: SectionRun, Value: e.ReportPath})
		if e.Options.Focus != "" {
			rec = append(rec, Field{Key: "FOCUS", Section: SectionRun, Value: e.Options.Focus})
		}
	}

	tools := e.Tools
	if tools == nil {
		tools = map[string]bool{}
	}
	return append(rec, Field{Key: ToolsKey, Section: SectionTools, Value: tools})
}

// optionalPath maps an unresolved path to a JSON null.
func optionalPath(path string) any {
	if path == "" {
		return nil
	}
	return path
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
