// Package config loads qprint settings from a YAML file.
//
// Loading starts from Default, overlays the file, fills any field the file
// left empty, applies QPRINT_* environment variables and finally validates
// the result. Validation collects every problem into a ValidationError
// instead of stopping at the first one.
//
// A minimal file:
//
//	export:
//	  format: dsv
//	  params:
//	    separator: ";"
//	    headers: hide
//	server:
//	  listen_address: 0.0.0.0:8080
//	  data_dir: /srv/data
//	datasets:
//	  inventory: /srv/data/inventory.jsonl
package config
