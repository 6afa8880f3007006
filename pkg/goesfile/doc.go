// Package goesfile parses GOES-R product filenames and maps them onto the
// hour-partitioned key layout used by the NOAA archive buckets.
//
// GOES-R filenames are underscore-separated, e.g.
//
//	OR_ABI-L1b-RadF-M6C01_G16_s20200010530000_e20200010539308_c20200010539354.nc
//
// Field 3 carries the observation start timestamp: a marker character,
// 13 digits of YYYYDDDHHMMSS, and a trailing sub-second digit. Both the
// marker and the trailing digit are stripped before parsing.
//
// The archive stores each file under
//
//	<product>/<year>/<day-of-year>/<hour>/<filename>
//
// inside the per-satellite container "noaa-goes<sat>". A local mirror
// reproduces the same subtree, including the container name, below its
// mirror root:
//
//	<root>/noaa-goes16/ABI-L1b-RadF/2020/001/05/OR_..._G16_s20200010530000_....nc
//
// All functions in this package are pure; nothing here touches the network
// or the filesystem.
package goesfile
