package config

import "os"

func existing(dirs []string, extensions []string) []ScanPath {
	seen := make(map[string]struct{}, len(dirs))
	var out []ScanPath
	for _, dir := range dirs {
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		out = append(out, ScanPath{Path: dir, Extensions: append([]string(nil), extensions...)})
	}
	return out
}
