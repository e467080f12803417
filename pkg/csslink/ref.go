package csslink

import (
	"fmt"

	"github.com/srediag/plugin-css/api"
)

// resolvedRef is the uniform (href, shouldUnmount) pair every stage works
// with after the two-shape reference variant has been decoded.
type resolvedRef struct {
	href          string
	shouldUnmount bool
}

// resolveRef decodes one StylesheetRef. A bare URLRef takes the
// configuration-level default policy; a LinkRef takes its own policy when
// explicitly present.
func resolveRef(ref api.StylesheetRef, defaultUnmount bool) (resolvedRef, error) {
	switch r := ref.(type) {
	case api.URLRef:
		if r == "" {
			return resolvedRef{}, ErrEmptyHref
		}
		return resolvedRef{href: string(r), shouldUnmount: defaultUnmount}, nil
	case api.LinkRef:
		if r.Href == "" {
			return resolvedRef{}, ErrEmptyHref
		}
		su := defaultUnmount
		if r.ShouldUnmount != nil {
			su = *r.ShouldUnmount
		}
		return resolvedRef{href: r.Href, shouldUnmount: su}, nil
	default:
		return resolvedRef{}, fmt.Errorf("csslink: unsupported stylesheet reference %T", ref)
	}
}

// resolveRefs decodes the whole list and appends build-asset URLs.
// Duplicate hrefs collapse to their first occurrence so that one mount
// never races two creations of the same URL.
func resolveRefs(refs []api.StylesheetRef, extra []string, defaultUnmount bool) ([]resolvedRef, error) {
	out := make([]resolvedRef, 0, len(refs)+len(extra))
	seen := make(map[string]struct{}, len(refs)+len(extra))

	add := func(r resolvedRef) {
		if _, dup := seen[r.href]; dup {
			return
		}
		seen[r.href] = struct{}{}
		out = append(out, r)
	}

	for _, ref := range refs {
		r, err := resolveRef(ref, defaultUnmount)
		if err != nil {
			return nil, err
		}
		add(r)
	}
	for _, href := range extra {
		r, err := resolveRef(api.URLRef(href), defaultUnmount)
		if err != nil {
			return nil, err
		}
		add(r)
	}
	return out, nil
}
