package app

import "github.com/treykane/cli-notebook/internal/watch"

func watchChanged(root string, paths ...string) watch.ChangedMsg {
	return watch.ChangedMsg{Root: root, Paths: paths}
}
