// Package export serializes detected horizon sequences for downstream
// consumers: CSV data files, XY graphs, and overlay renderings of the horizon
// drawn over the source frame.
//
// All exporters treat a Missing column the same way: CSV writes -1, graphs
// break the polyline, overlays skip the column. None of them interpolate or
// otherwise invent heights the detector did not produce.
package export
