// Package types provides core types used across the chathy service.
// This package has ZERO dependencies on other chathy packages to avoid
// circular imports. All other packages should import types from here.
package types
