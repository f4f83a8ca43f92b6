package search

// History supplies the learned signals blended into scores. It is
// implemented by *history.Store.
type History interface {
	GlobalCount(path string) uint32
	QueryCount(query, path string) uint32
	LastLaunched(path string) (uint64, bool)
	FolderExpansionCount(folder string) uint32
	RecentLaunches(limit int) []string
}

type noHistory struct{}

func (noHistory) GlobalCount(string) uint32          { return 0 }
func (noHistory) QueryCount(string, string) uint32   { return 0 }
func (noHistory) LastLaunched(string) (uint64, bool) { return 0, false }
func (noHistory) FolderExpansionCount(string) uint32 { return 0 }
func (noHistory) RecentLaunches(int) []string        { return nil }

func orEmpty(h History) History {
	if h == nil {
		return noHistory{}
	}
	return h
}
