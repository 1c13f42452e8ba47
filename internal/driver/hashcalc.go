package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"pyparse/internal/directive"
	"pyparse/internal/project"
	"pyparse/internal/source"
)

// reportKey: H(content || filter || schema). Any change of the prefix or of
// the report layout produces a new key.
func reportKey(file *source.File, f directive.Filter) project.Digest {
	var filter project.Digest
	if f.Enabled() {
		filter = sha256.Sum256([]byte("prefix\x00" + f.Prefix()))
	}
	var schema project.Digest
	binary.BigEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	return project.Combine(project.Digest(file.Hash), filter, schema)
}
