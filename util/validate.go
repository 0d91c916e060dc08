package util

// Problem is a malformed asset folder found by ValidateTree.
type Problem struct {
	Folder string
	Err    error
}

func (p Problem) Error() string {
	return p.Err.Error()
}

func (p Problem) Unwrap() error {
	return p.Err
}

// Report summarizes a validation pass over an unpacked tree.
type Report struct {
	Folders  int
	Assets   int
	Problems []Problem
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// ValidateTree reads every top-level folder of tree and collects each
// malformed one instead of stopping at the first. Only a failure to list
// tree itself is returned as an error.
func ValidateTree(tree string) (Report, error) {
	var r Report
	dirs, err := assetDirs(tree)
	if err != nil {
		return r, err
	}
	for _, dir := range dirs {
		r.Folders++
		folder, err := ReadAssetFolder(dir)
		if err != nil {
			r.Problems = append(r.Problems, Problem{Folder: folder.Name(), Err: err})
			continue
		}
		if folder.Kind != IsAsset {
			continue
		}
		r.Assets++
		if _, err := OutputPath(folder.Pathname, false); err != nil {
			r.Problems = append(r.Problems, Problem{Folder: folder.Name(), Err: err})
		}
	}
	return r, nil
}
