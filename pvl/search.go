package pvl

import (
	"pvlkit/util/slice"
)

// Scope represents how deep searches go
type Scope int

const (
	None     Scope = iota // Only the container itself
	Traverse              // The container and every nested object, breadth first
)

// walk calls <visit> for <o> and every nested object breadth first until <visit> returns true.
//
// Groups are never descended into, they have no nested containers.
func (o *Object) walk(visit func(obj *Object) bool) {
	queue := []*Object{o}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visit(cur) {
			return
		}
		queue = append(queue, cur.Objects...)
	}
}

// LookupKeywordIn returns the first keyword with <name> within <scope> and true, or nil and false if not found.
//
// With Traverse scope each object is checked for own keywords first, then for keywords of its groups, then nested
// objects are queued.
func (o *Object) LookupKeywordIn(name string, scope Scope) (*Keyword, bool) {
	if scope == None {
		return o.LookupKeyword(name)
	}
	var found *Keyword
	o.walk(func(obj *Object) bool {
		if kw, ok := obj.LookupKeyword(name); ok {
			found = kw
			return true
		}
		for _, grp := range obj.Groups {
			if kw, ok := grp.LookupKeyword(name); ok {
				found = kw
				return true
			}
		}
		return false
	})
	return found, found != nil
}

// HasKeywordIn returns true if keyword with <name> exists within <scope>
func (o *Object) HasKeywordIn(name string, scope Scope) bool {
	_, ok := o.LookupKeywordIn(name, scope)
	return ok
}

// FindKeywordIn returns the first keyword with <name> within <scope>, NotFoundError or KindMismatchError if <name>
// belongs to a group or an object.
func (o *Object) FindKeywordIn(name string, scope Scope) (*Keyword, error) {
	if kw, ok := o.LookupKeywordIn(name, scope); ok {
		return kw, nil
	}
	if o.HasGroup(name, scope) {
		return nil, KindMismatchError{Wanted: KeywordKind, Found: GroupKind, Name: name, Container: o.Name,
			Filename: o.Filename}
	}
	if o.HasObject(name, scope) {
		return nil, KindMismatchError{Wanted: KeywordKind, Found: ObjectKind, Name: name, Container: o.Name,
			Filename: o.Filename}
	}
	return nil, o.notFound(KeywordKind, name)
}

// LookupGroup returns the first group with <name> within <scope> and true, or nil and false if not found
func (o *Object) LookupGroup(name string, scope Scope) (*Group, bool) {
	var found *Group
	o.walk(func(obj *Object) bool {
		if grp, _, ok := slice.FindNamed(obj.Groups, name); ok {
			found = grp
			return true
		}
		return scope == None
	})
	return found, found != nil
}

// HasGroup returns true if group with <name> exists within <scope>
func (o *Object) HasGroup(name string, scope Scope) bool {
	_, ok := o.LookupGroup(name, scope)
	return ok
}

// FindGroup returns the first group with <name> within <scope>, NotFoundError or KindMismatchError if <name>
// belongs to an object.
func (o *Object) FindGroup(name string, scope Scope) (*Group, error) {
	if grp, ok := o.LookupGroup(name, scope); ok {
		return grp, nil
	}
	if o.HasObject(name, scope) {
		return nil, KindMismatchError{Wanted: GroupKind, Found: ObjectKind, Name: name, Container: o.Name,
			Filename: o.Filename}
	}
	return nil, o.notFound(GroupKind, name)
}

// LookupObject returns the first nested object with <name> within <scope> and true, or nil and false if not found.
//
// The object itself is not matched.
func (o *Object) LookupObject(name string, scope Scope) (*Object, bool) {
	var found *Object
	o.walk(func(obj *Object) bool {
		if child, _, ok := slice.FindNamed(obj.Objects, name); ok {
			found = child
			return true
		}
		return scope == None
	})
	return found, found != nil
}

// HasObject returns true if nested object with <name> exists within <scope>
func (o *Object) HasObject(name string, scope Scope) bool {
	_, ok := o.LookupObject(name, scope)
	return ok
}

// FindObject returns the first nested object with <name> within <scope>, NotFoundError or KindMismatchError if
// <name> belongs to a group.
func (o *Object) FindObject(name string, scope Scope) (*Object, error) {
	if obj, ok := o.LookupObject(name, scope); ok {
		return obj, nil
	}
	if o.HasGroup(name, scope) {
		return nil, KindMismatchError{Wanted: ObjectKind, Found: GroupKind, Name: name, Container: o.Name,
			Filename: o.Filename}
	}
	return nil, o.notFound(ObjectKind, name)
}
