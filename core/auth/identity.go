// Package auth resolves the acting person of a request into an Identity and
// centralizes every capability check made before a mutation.
package auth

import "strings"

// Role labels are free-form ontology resources, not an enum: membership is a
// case-insensitive substring match against the role label, falling back to
// the role IRI when no label was stored.
const (
	RoleAdministrator = "administrator"
	RoleInstructor    = "instructor"
	RoleStudent       = "student"
)

// Identity is the resolved caller context for one request. The zero value is
// Anonymous and answers false to every check.
type Identity struct {
	IRI       string
	Name      string
	Email     string
	RoleIRI   string
	RoleLabel string
}

var Anonymous = Identity{}

func (id Identity) IsAnonymous() bool { return id.IRI == "" }

// HasRole reports whether the identity's role matches the given role name.
func (id Identity) HasRole(role string) bool {
	if id.IsAnonymous() {
		return false
	}
	if id.RoleLabel != "" {
		return strings.Contains(strings.ToLower(id.RoleLabel), role)
	}
	return strings.Contains(strings.ToLower(id.RoleIRI), role)
}

func (id Identity) IsAdmin() bool      { return id.HasRole(RoleAdministrator) }
func (id Identity) IsInstructor() bool { return id.HasRole(RoleInstructor) }
func (id Identity) IsStudent() bool    { return id.HasRole(RoleStudent) }

// CanCreate reports whether the identity may create owned content
// (activities, events, ...): Administrators and Instructors only.
func (id Identity) CanCreate() bool {
	return id.IsAdmin() || id.IsInstructor()
}

// CanModify reports whether the identity may edit or delete a resource owned
// by ownerIRI: the owner themselves, or an Administrator. An empty ownerIRI
// means the resource records no owner; only an Administrator may touch it.
func (id Identity) CanModify(ownerIRI string) bool {
	if id.IsAnonymous() {
		return false
	}
	if id.IsAdmin() {
		return true
	}
	return ownerIRI != "" && id.IRI == ownerIRI
}

// CanDeletePerson applies CanModify to a person resource with one extra rule:
// an administrator deleting their own account is always denied.
func (id Identity) CanDeletePerson(targetIRI string) bool {
	if id.IsAdmin() && id.IRI == targetIRI {
		return false
	}
	return id.CanModify(targetIRI)
}

// RoleLabelFromIRI derives a human-readable role label from the trailing
// fragment or path component of a role IRI.
func RoleLabelFromIRI(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
