// Package spatial provides the immutable observation index used by every
// analysis run.
//
// The index is built once from the full observation set and answers two
// queries: all observations within a radius of a point (via a kd-tree), and
// exact lookup by well identifier (via a sorted secondary key slice). It
// holds no mutable state after Build, so a single index is safely shared by
// any number of concurrent queries.
//
// Attribute filters (aquifer set, date range) are deliberately applied after
// the radius query rather than pushed into the tree: the filters change per
// call while the index must stay immutable.
package spatial
