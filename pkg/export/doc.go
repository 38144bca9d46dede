// Package export writes rendered pages as static files.
//
// Each page path maps to an object key: "/" becomes "index.html" and
// "/about" becomes "about/index.html", so any static host serves the
// export with clean URLs. Keys go to a Sink, either a local directory or
// an S3 bucket.
//
//	sink := export.NewS3Sink(export.NewS3Client(export.S3Config{Region: "eu-west-1"}), "my-site", "")
//	res, err := export.Export(ctx, sink, pages)
package export
