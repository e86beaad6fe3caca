package models

// Reference is a named pointer to a commit (branch or tag).
// Hash always names a commit; annotated tags are peeled.
type Reference struct {
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// FindReference returns the reference with exactly the given name, or nil
func FindReference(refs []*Reference, name string) *Reference {
	for _, ref := range refs {
		if ref.Name == name {
			return ref
		}
	}
	return nil
}
