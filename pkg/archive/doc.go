// Package archive provides blob storage for operational artifacts: dead
// letter exports, generated reports, and similar write-once files that
// outlive the process producing them.
//
// Two backends implement the same Storage interface: LocalStorage confines
// objects to a base directory on the local filesystem, and S3Storage talks
// to Amazon S3 or any S3-compatible service (MinIO, DigitalOcean Spaces).
// Both reject path traversal in storage keys.
//
// # Usage
//
//	store, err := archive.NewLocalStorage("./archives", "/archives/")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	obj, err := store.Put(ctx, "dead-letters/payments/2025-06-01.jsonl",
//		"application/x-ndjson", bytes.NewReader(data))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(store.URL(obj.Path))
//
// For S3, construction loads AWS configuration once and the resulting
// client is reused for all operations:
//
//	store, err := archive.NewS3Storage(ctx, archive.S3Config{
//		Bucket: "hotelops-archives",
//		Region: "eu-central-1",
//	})
//
// Environment-driven deployments pick the backend through Config and New,
// keeping the choice out of application code.
//
// # Errors
//
// All failures wrap package sentinel errors such as ErrObjectNotFound,
// ErrInvalidPath and ErrAccessDenied, so callers can branch with errors.Is
// regardless of the backend in use.
package archive
