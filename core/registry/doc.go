// Package registry loads tutors and students from YAML or JSON party files,
// read from disk or fetched over HTTP.
//
//	tutors:
//	  - name: Ann
//	    subjects: [Math, Science]
//	    availability: ["Mon:E", "Tue:S"]
//	students:
//	  - name: Zoe
//	    availability: ["Mon:E"]
//	    demand: [Math, "Science:2", {subject: Art, count: 1}]
//
// A demand entry is a bare subject (one lesson), "Subject:N" or an object
// with subject and count. File order is preserved and becomes the matching
// priority of the assignment engine.
package registry
