// Package s3 provides an Amazon S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("bitsets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	snaps := snapshot.New(store, snapshot.WithCompression(compress.ZSTD))
//
// # Features
//
//   - Range reads for header-first snapshot decoding
//   - CRC32C-validated uploads; multipart via the SDK upload manager for large blobs
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
