// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// MinIO is an S3-compatible object store. This package uses the official MinIO
// Go client, so it also works with Ceph, SeaweedFS, Garage and other
// S3-compatible services without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minioblob.New("localhost:9000", "bitsets",
//	    minioblob.WithCredentials("minioadmin", "minioadmin"),
//	    minioblob.WithPrefix("prod/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	snaps := snapshot.New(store)
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
