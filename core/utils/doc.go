// Package utils contains small shared helpers: loose type coercion for
// record metadata bags and rich-text-to-plain-text conversion for
// description fields.
package utils
