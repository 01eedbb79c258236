// Package s3 implements blobstore.Store on Amazon S3 using aws-sdk-go-v2.
//
// Segment uploads are streamed through feature/s3/manager, so a segment
// larger than memory can be written without buffering it in full.
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "segments/")
package s3
