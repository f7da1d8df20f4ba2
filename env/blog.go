package env

type BlogEnvironment struct {
	// ExposeDrafts widens the public posts listing to include drafts. The
	// default keeps unauthenticated callers on published posts only.
	ExposeDrafts bool `validate:"-"`
	// EditorDir points at the built editor bundle served under /editor/.
	// Leave empty to run the API headless.
	EditorDir string `validate:"omitempty,dir"`
}

func (e BlogEnvironment) ServesEditor() bool {
	return e.EditorDir != ""
}
