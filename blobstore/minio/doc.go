// Package minio implements blobstore.Store for MinIO and other
// S3-compatible object storage using the native MinIO client.
//
//	client, err := minio.New("play.min.io", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	store := miniostore.NewStore(client, "segments", "prod/")
package minio
