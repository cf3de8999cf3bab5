// Package configdoc loads human-authored JSON configuration files such as
// tsconfig.json.
//
// Load tolerates line comments, block comments, and trailing commas before
// handing the content to gjson, and exposes the result as an immutable
// Document addressed by dotted key paths.
package configdoc
