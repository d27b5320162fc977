// Package gitremote abstracts the git transport the repository cache
// clones through.
//
// The Transport interface carries the two operations the pipeline needs:
// shallow-cloning a repository at a reference into a target directory, and
// listing a remote's tags without cloning. GoGit implements it with the
// pure-Go go-git client; tests substitute their own implementations.
package gitremote
