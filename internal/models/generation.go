package models

// GeneratedFile is one rendered artifact ready to be written
type GeneratedFile struct {
	Path    string       // slash-separated path relative to the output root
	Kind    ArtifactKind // which artifact the file holds
	Model   string       // name of the model the file was generated from
	Package string       // package clause of the file
	Content []byte       // full file content, banner included
}

// GenerationResult collects the files produced by a run
type GenerationResult struct {
	Files []GeneratedFile
}

// Add appends files to the result
func (r *GenerationResult) Add(files ...GeneratedFile) {
	r.Files = append(r.Files, files...)
}

// Find returns the file generated at path
func (r *GenerationResult) Find(path string) (GeneratedFile, bool) {
	for _, f := range r.Files {
		if f.Path == path {
			return f, true
		}
	}
	return GeneratedFile{}, false
}

// Packages returns the distinct packages in first-seen order
func (r *GenerationResult) Packages() []string {
	seen := make(map[string]bool)
	var pkgs []string
	for _, f := range r.Files {
		if !seen[f.Package] {
			seen[f.Package] = true
			pkgs = append(pkgs, f.Package)
		}
	}
	return pkgs
}
