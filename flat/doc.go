// Package flat provides exact nearest-neighbor selection over an in-memory
// reference set by scanning every point.
//
// Selection is tie-inclusive: the K-th smallest distance becomes a threshold
// and every point at or below it is returned, so more than K neighbors come
// back when several points share the boundary distance.
//
//	dists, _ := flat.Distances(query, ref, distance.MetricEuclidean)
//	idx, _ := flat.Select(dists, k)
//
// Flat bundles a reference set with its labels for repeated searches:
//
//	f, _ := flat.New(ref, labels, func(o *flat.Options) {
//	    o.Distancer = distance.MetricManhattan
//	})
//	neighbors, _ := f.Search(query, 21)
package flat
