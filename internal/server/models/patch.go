package models

// ProfilePatch carries the fields of a profile update. Nil pointers mean
// "leave unchanged". FilePath is an ephemeral local file reference consumed
// by the media uploader; it is never persisted.
type ProfilePatch struct {
	Username  *string
	Email     *string
	Firstname *string
	Lastname  *string
	Image     *string
	FilePath  string
}

// IsEmpty reports whether the patch changes nothing in the store.
func (p *ProfilePatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Firstname == nil &&
		p.Lastname == nil && p.Image == nil
}
