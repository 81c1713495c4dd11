// Package prelude embeds the builtin XS declarations checked before any
// user file, mirroring the original implementation's include_str! of
// prelude.xs.
package prelude

import _ "embed"

//go:embed prelude.xs
var Source string

const Path = "prelude.xs"
