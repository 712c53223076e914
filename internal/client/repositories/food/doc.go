// Package food persists the food-introduction board: one FoodItem per food a
// child has been offered, bucketed by category.
//
// Semantics match the journal collection: full-replace Put, (nil, nil) from
// Get on a miss, unordered listings, idempotent Delete. Recategorize moves an
// item to a new bucket inside one transaction and clears its sync flag.
//
// ImageFile is an opaque BlobStore path; this package never touches blobs.
// Removing the blob before the record is the caller's job.
package food
