package repository

const (
	KindGit   = "git"
	KindCargo = "cargo"
)

// Repository describes the source tree a diff applies to
type Repository struct {
	Kind   string
	Root   string // Absolute path diff paths are relative to
	Origin string // Git origin URL, if any
	Name   string // Cargo package name, or the repository name
}
