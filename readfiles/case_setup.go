package readfiles

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/notargets/foampost/types"
)

// CaseSetupEntry is one key = value pair from a non geometry section.
type CaseSetupEntry struct {
	Section string
	Name    string
	Value   string
}

// CaseSetup is the flat name -> value table built from a caseSetup file.
// Names are case sensitive and the first occurrence in file order wins.
type CaseSetup struct {
	Path     string
	Entries  []CaseSetupEntry
	Shadowed []CaseSetupEntry // later duplicates, ignored by Lookup
	index    map[string]int
}

// ReadCaseSetup parses the INI style caseSetup file. Sections whose name
// contains GEOM are skipped. Keys of the DEFAULT section, explicit or ahead
// of the first header, are inherited by every other section that does not
// define them itself.
func ReadCaseSetup(path string) (cs *CaseSetup, err error) {
	var (
		data     []byte
		cfg      *ini.File
		defaults []*ini.Key
	)
	if data, err = readCaseFile(path); err != nil {
		return
	}
	if cfg, err = ini.LoadSources(ini.LoadOptions{
		AllowShadows:        true,
		IgnoreInlineComment: true,
	}, data); err != nil {
		return nil, &MalformedLineError{Path: path, Field: "section", Line: err.Error()}
	}
	cs = &CaseSetup{
		Path:  path,
		index: make(map[string]int),
	}
	if def, derr := cfg.GetSection(ini.DefaultSection); derr == nil {
		defaults = def.Keys()
	}
	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection || strings.Contains(name, "GEOM") {
			continue
		}
		own := make(map[string]bool)
		for _, key := range section.Keys() {
			own[key.Name()] = true
			for _, val := range keyValues(key) {
				cs.add(CaseSetupEntry{Section: name, Name: key.Name(), Value: val})
			}
		}
		for _, key := range defaults {
			if own[key.Name()] {
				continue
			}
			if _, ok := cs.index[key.Name()]; ok {
				continue
			}
			cs.add(CaseSetupEntry{Section: name, Name: key.Name(), Value: keyValues(key)[0]})
		}
	}
	return
}

func keyValues(key *ini.Key) (vals []string) {
	if vals = key.ValueWithShadows(); len(vals) == 0 {
		vals = []string{""}
	}
	return
}

func (cs *CaseSetup) add(e CaseSetupEntry) {
	if _, ok := cs.index[e.Name]; ok {
		cs.Shadowed = append(cs.Shadowed, e)
		return
	}
	cs.index[e.Name] = len(cs.Entries)
	cs.Entries = append(cs.Entries, e)
}

// Lookup returns the value stored under name.
func (cs *CaseSetup) Lookup(name string) (value string, ok bool) {
	var i int
	if i, ok = cs.index[name]; !ok {
		return
	}
	return cs.Entries[i].Value, true
}

// Float returns the named value as a number. A missing name gives an invalid
// OptionalFloat, a value that is not a number is an error.
func (cs *CaseSetup) Float(name string) (of types.OptionalFloat, err error) {
	val, ok := cs.Lookup(name)
	if !ok {
		return
	}
	var f float64
	if f, err = strconv.ParseFloat(strings.TrimSpace(val), 64); err != nil {
		return of, &MalformedLineError{
			Path:  cs.Path,
			Field: name,
			Line:  fmt.Sprintf("%s = %s", name, val),
		}
	}
	return types.SomeFloat(f), nil
}
