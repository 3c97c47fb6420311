// Package platform checks filesystem preconditions before generation: the
// base directory must exist, be a directory and be writable by the current
// user. On Unix the writability check asks the kernel through access(2);
// on Windows it falls back to the permission bits reported by Stat.
package platform
