package translate

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"pvlkit/pvl"
	"pvlkit/util/logger"
	"pvlkit/util/slice"
)

// Manager translates keywords of an input document according to a table
type Manager struct {
	log   *logger.Logger
	table *Table
	input *pvl.Document
}

// NewManager returns new translation manager reading values from <input>
func NewManager(log *logger.Logger, table *Table, input *pvl.Document) Manager {
	return Manager{log: log, table: table, input: input}
}

// Translate returns translated value at <index> of input keyword of <name>
func (m Manager) Translate(name string, index int) (string, error) {
	kw, isDefault, err := m.inputKeyword(name)
	if err != nil {
		return "", err
	}
	var text string
	if isDefault {
		text = kw.Values[0].Text
	} else if text, err = kw.Text(index); err != nil {
		return "", errors.Wrap(err, "Read input value")
	}
	out, err := m.table.TranslateValue(name, text)
	if err == nil && m.table.IsDebug(name) {
		m.log.InfoFi("Translated value", "name", name, "index", index, "input", text, "output", out)
	}
	return out, err
}

// TranslateKeyword returns keyword named by the output name of <name> with every input value translated.
//
// Units of input values are kept.
func (m Manager) TranslateKeyword(name string) (*pvl.Keyword, error) {
	kw, _, err := m.inputKeyword(name)
	if err != nil {
		return nil, err
	}
	out := pvl.NewKeyword(m.table.OutputName(name))
	out.Style = kw.Style
	for _, v := range kw.Values {
		text, err := m.table.TranslateValue(name, v.Text)
		if err != nil {
			return nil, err
		}
		out.AddValue(text, v.Unit)
	}
	if m.table.IsDebug(name) {
		m.log.InfoFi("Translated keyword", "name", name, "input", kw.Strings(), "output", out.Strings())
	}
	return out, nil
}

// Auto translates every table group marked Auto and adds results to <out>.
//
// Failed translation of a group marked Optional is skipped.
func (m Manager) Auto(out *pvl.Document) error {
	for _, name := range m.table.Names() {
		if !m.table.IsAuto(name) {
			continue
		}
		kw, err := m.TranslateKeyword(name)
		if err != nil {
			if m.table.IsOptional(name) {
				m.log.DebugFi("Skipping optional translation", "name", name, "reason", err)
				continue
			}
			return errors.Wrap(err, "Translate keyword")
		}
		cont, err := m.CreateContainer(name, out)
		if err != nil {
			return errors.Wrap(err, "Create output container")
		}
		if err := cont.AddKeyword(kw, pvl.Replace); err != nil {
			return errors.Wrap(err, "Add translated keyword")
		}
		m.log.DebugFi("Translated keyword", "name", kw.Name, "values", kw.Strings())
	}
	return nil
}

// CreateContainer returns container of <out> described by output position of <name>, creating missing objects and
// groups on the way.
//
// Output position is a list of container kind and name pairs, for example (Object, IsisCube, Group, Instrument).
// Empty position or ROOT means the document root.
func (m Manager) CreateContainer(name string, out *pvl.Document) (*pvl.Container, error) {
	if _, err := m.table.group(name); err != nil {
		return nil, err
	}
	pos := m.table.OutputPosition(name)
	if len(pos) > 0 && slice.IsNameSame(pos[0], RootPosition) {
		pos = pos[1:]
	}
	if len(pos)%2 != 0 {
		return nil, TranslationError{Name: name, Reason: "Output position must be pairs of container kind and name"}
	}
	obj := &out.Object
	for i := 0; i < len(pos); i += 2 {
		kind, contName := pos[i], pos[i+1]
		last := i+2 == len(pos)
		switch {
		case slice.IsNameSame(kind, string(pvl.ObjectKind)):
			child, found := obj.LookupObject(contName, pvl.None)
			if !found {
				child = pvl.NewObject(contName)
				if err := obj.AddObject(child); err != nil {
					return nil, errors.Wrap(err, "Add output object")
				}
			}
			obj = child
		case slice.IsNameSame(kind, string(pvl.GroupKind)) && last:
			grp, found := obj.LookupGroup(contName, pvl.None)
			if !found {
				grp = pvl.NewGroup(contName)
				if err := obj.AddGroup(grp); err != nil {
					return nil, errors.Wrap(err, "Add output group")
				}
			}
			return &grp.Container, nil
		case slice.IsNameSame(kind, string(pvl.GroupKind)):
			return nil, TranslationError{Name: name, Reason: fmt.Sprintf("Group [%v] must be the last output position",
				contName)}
		default:
			return nil, TranslationError{Name: name, Reason: fmt.Sprintf("Unknown container kind [%v]", kind)}
		}
	}
	return &obj.Container, nil
}

// inputKeyword returns input keyword of <name> from the first input container holding it.
//
// If no container holds it, keyword made of the input default is returned with <isDefault> set.
func (m Manager) inputKeyword(name string) (kw *pvl.Keyword, isDefault bool, err error) {
	key, err := m.table.InputKey(name)
	if err != nil {
		return nil, false, err
	}
	deps := m.table.InputKeyDependencies(name)
	for _, path := range m.inputPaths(name) {
		cont, found := m.container(path)
		if !found || !satisfies(cont, deps) {
			m.log.TraceFi("Skipping input container", "name", name, "path", path, "found", found)
			continue
		}
		if kw, found := cont.LookupKeyword(key); found {
			return kw, false, nil
		}
	}
	if def, found := m.table.InputDefault(name); found {
		return pvl.NewKeyword(key, def), true, nil
	}
	return nil, false, TranslationError{Name: name, Reason: fmt.Sprintf("Unable to find input keyword [%v]", key)}
}

// inputPaths returns input container paths of <name>, the document root if there are none
func (m Manager) inputPaths(name string) [][]string {
	paths := m.table.InputGroups(name)
	return lo.Ternary(len(paths) == 0, [][]string{nil}, paths)
}

// container returns container of the input document at <path>.
//
// Every path element but the last names an object, the last one names a group or, if there is no such group, an
// object.
func (m Manager) container(path []string) (*pvl.Container, bool) {
	if len(path) > 0 && slice.IsNameSame(path[0], RootPosition) {
		path = path[1:]
	}
	obj := &m.input.Object
	for i, name := range path {
		if i == len(path)-1 {
			if grp, found := obj.LookupGroup(name, pvl.None); found {
				return &grp.Container, true
			}
		}
		child, found := obj.LookupObject(name, pvl.None)
		if !found {
			return nil, false
		}
		obj = child
	}
	return &obj.Container, true
}

// satisfies returns true if <cont> meets every "keyword@value" condition in <deps>
func satisfies(cont *pvl.Container, deps []string) bool {
	return lo.EveryBy(deps, func(dep string) bool {
		key, value, _ := strings.Cut(dep, "@")
		kw, found := cont.LookupKeyword(strings.TrimSpace(key))
		return found && kw.Len() > 0 && strings.EqualFold(kw.Values[0].Text, strings.TrimSpace(value))
	})
}
