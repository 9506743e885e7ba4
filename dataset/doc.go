// Package dataset loads and saves the numpy array files the training
// pipeline produces and consumes.
//
// Arrays are stored in NPY format (version 1.0, little-endian float32,
// C order), optionally compressed with zstd (".zst") or lz4 (".lz4")
// selected by file extension. Files are read from and written to a
// blobstore.BlobStore, so local directories and object stores are
// interchangeable. A resource.Controller can bound load concurrency and IO
// throughput.
//
// The loader understands the training pipeline's naming convention:
//
//	x_train_robust_{N}const_ptetaphi.npy  (events, N, features)
//	y_train_robust_{N}const_ptetaphi.npy  (events,)
package dataset
