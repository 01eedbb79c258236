// Package blobstore stores finished columnar segments as immutable blobs.
//
// A Store abstracts the destination: in-memory (testing), the local file
// system, or S3-compatible object storage (see the s3 and minio
// subpackages). Segments are streamed into a store through Create, so a
// segment never has to be buffered in full on the writing side.
//
// WriteSegment ties a Store to a columnar.Serializer:
//
//	err := blobstore.WriteSegment(ctx, store, "seg-00042", func(s *columnar.Serializer) error {
//	    cw, err := s.BeginColumn(name, tc)
//	    ...
//	})
package blobstore
