package pvl

import (
	"pvlkit/util/slice"
)

// Object represents container which holds keywords, nested groups and nested objects
type Object struct {
	Container
	Groups  []*Group
	Objects []*Object
}

// NewObject returns new empty object with <name>
func NewObject(name string) *Object {
	return &Object{Container: Container{Name: name}}
}

// AddGroup appends <grp> to nested groups or returns NameError
func (o *Object) AddGroup(grp *Group) error {
	if err := ValidateContainerName(grp.Name); err != nil {
		return err
	}
	o.Groups = append(o.Groups, grp)
	return nil
}

// AddObject appends <obj> to nested objects or returns NameError
func (o *Object) AddObject(obj *Object) error {
	if err := ValidateContainerName(obj.Name); err != nil {
		return err
	}
	o.Objects = append(o.Objects, obj)
	return nil
}

// GroupAt returns nested group at <idx> or IndexError
func (o *Object) GroupAt(idx int) (*Group, error) {
	if idx < 0 || idx >= len(o.Groups) {
		return nil, o.outOfRange(GroupKind, idx, len(o.Groups))
	}
	return o.Groups[idx], nil
}

// ObjectAt returns nested object at <idx> or IndexError
func (o *Object) ObjectAt(idx int) (*Object, error) {
	if idx < 0 || idx >= len(o.Objects) {
		return nil, o.outOfRange(ObjectKind, idx, len(o.Objects))
	}
	return o.Objects[idx], nil
}

// DeleteGroup removes the first nested group with <name> or returns NotFoundError
func (o *Object) DeleteGroup(name string) error {
	_, idx, ok := slice.FindNamed(o.Groups, name)
	if !ok {
		return o.notFound(GroupKind, name)
	}
	o.Groups = slice.RemoveAt(o.Groups, idx)
	return nil
}

// DeleteGroupAt removes nested group at <idx> or returns IndexError
func (o *Object) DeleteGroupAt(idx int) error {
	if idx < 0 || idx >= len(o.Groups) {
		return o.outOfRange(GroupKind, idx, len(o.Groups))
	}
	o.Groups = slice.RemoveAt(o.Groups, idx)
	return nil
}

// DeleteObject removes the first nested object with <name> or returns NotFoundError
func (o *Object) DeleteObject(name string) error {
	_, idx, ok := slice.FindNamed(o.Objects, name)
	if !ok {
		return o.notFound(ObjectKind, name)
	}
	o.Objects = slice.RemoveAt(o.Objects, idx)
	return nil
}

// DeleteObjectAt removes nested object at <idx> or returns IndexError
func (o *Object) DeleteObjectAt(idx int) error {
	if idx < 0 || idx >= len(o.Objects) {
		return o.outOfRange(ObjectKind, idx, len(o.Objects))
	}
	o.Objects = slice.RemoveAt(o.Objects, idx)
	return nil
}

// IsEmpty returns true if object has no keywords, groups and objects
func (o *Object) IsEmpty() bool {
	return len(o.Keywords) == 0 && len(o.Groups) == 0 && len(o.Objects) == 0
}

// ValidateContainerName returns NameError if <name> can not be used as group or object name.
//
// Unlike keyword names, container names may contain spaces, they are quoted on output.
func ValidateContainerName(name string) error {
	if name == "" {
		return NameError{Name: name, Reason: "name is empty"}
	}
	return nil
}
