// Package fs abstracts the file operations behind the local blob store so
// tests can inject write, sync, close and rename failures.
//
// Production code uses [Default] ([LocalFS]). Tests wrap it in [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: 16})
package fs
