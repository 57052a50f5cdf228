// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package url

import (
	"errors"
	"fmt"
)

// ErrMissingHost means that a URL did not include a hostname.
var ErrMissingHost = errors.New("missing host")

// ErrWrongScheme means that a URL included a scheme other than the StakeCore
// scheme.
var ErrWrongScheme = errors.New("wrong scheme")

// ErrUnsupportedPart means that a URL included user info, a query, or a
// fragment, none of which are valid in a ledger URL.
var ErrUnsupportedPart = errors.New("unsupported URL component")

func missingHost(url string) error {
	return fmt.Errorf("%w in URL %q", ErrMissingHost, url)
}

func wrongScheme(url string) error {
	return fmt.Errorf("%w in URL %q", ErrWrongScheme, url)
}

func unsupportedPart(url string) error {
	return fmt.Errorf("%w in URL %q", ErrUnsupportedPart, url)
}
