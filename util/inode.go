package util

import (
	"sync"
)

var (
	highestInode uint64 = 1 // 1 is the mount root
	inodeLock           = sync.Mutex{}
)

// GetNewInode hands out a process-unique inode number for a mounted node.
func GetNewInode() uint64 {
	inodeLock.Lock()
	defer inodeLock.Unlock()
	highestInode++
	return highestInode
}
