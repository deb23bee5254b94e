// file: pkg/raw-client/api/params.go

package api

import (
	"net/url"
	"strconv"
)

// PostParams carries the optional query options for create and replace
// calls. The zero value contributes nothing to the query string.
type PostParams struct {
	// DryRun asks the server to process the request without persisting it.
	DryRun bool
	// FieldManager names the actor for server-side field tracking.
	FieldManager string
	// FieldValidation controls how unknown/duplicate fields are handled
	// ("Ignore", "Warn" or "Strict").
	FieldValidation string
}

func (p PostParams) queryValues() url.Values {
	v := url.Values{}
	if p.DryRun {
		v.Set("dryRun", "All")
	}
	if p.FieldManager != "" {
		v.Set("fieldManager", p.FieldManager)
	}
	if p.FieldValidation != "" {
		v.Set("fieldValidation", p.FieldValidation)
	}
	return v
}

// PatchParams carries the optional query options for patch calls. The
// patch strategy itself travels separately as a PatchType, chosen by the
// caller.
type PatchParams struct {
	DryRun          bool
	FieldManager    string
	FieldValidation string
	// Force requests server-side-apply conflict overriding.
	Force bool
}

func (p PatchParams) queryValues() url.Values {
	v := url.Values{}
	if p.DryRun {
		v.Set("dryRun", "All")
	}
	if p.FieldManager != "" {
		v.Set("fieldManager", p.FieldManager)
	}
	if p.FieldValidation != "" {
		v.Set("fieldValidation", p.FieldValidation)
	}
	if p.Force {
		v.Set("force", "true")
	}
	return v
}

// ListParams carries the optional query options for list and watch
// calls.
type ListParams struct {
	// LabelSelector restricts the result by label, e.g. "app=foo".
	LabelSelector string
	// FieldSelector restricts the result by field, e.g.
	// "metadata.name=foo".
	FieldSelector string
	// ResourceVersion is the version to list/watch from.
	ResourceVersion string
	// TimeoutSeconds bounds the server-side duration of the call.
	TimeoutSeconds *int64
	// Limit caps the number of returned items; Continue resumes a
	// previous limited list.
	Limit    int64
	Continue string
}

func (p ListParams) queryValues() url.Values {
	v := url.Values{}
	if p.LabelSelector != "" {
		v.Set("labelSelector", p.LabelSelector)
	}
	if p.FieldSelector != "" {
		v.Set("fieldSelector", p.FieldSelector)
	}
	if p.ResourceVersion != "" {
		v.Set("resourceVersion", p.ResourceVersion)
	}
	if p.TimeoutSeconds != nil {
		v.Set("timeoutSeconds", strconv.FormatInt(*p.TimeoutSeconds, 10))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.FormatInt(p.Limit, 10))
	}
	if p.Continue != "" {
		v.Set("continue", p.Continue)
	}
	return v
}

// DeleteParams carries the optional query options for delete calls.
type DeleteParams struct {
	DryRun bool
	// GracePeriodSeconds overrides the object's termination grace period.
	GracePeriodSeconds *int64
	// PropagationPolicy controls dependent deletion ("Orphan",
	// "Background" or "Foreground").
	PropagationPolicy string
}

func (p DeleteParams) queryValues() url.Values {
	v := url.Values{}
	if p.DryRun {
		v.Set("dryRun", "All")
	}
	if p.GracePeriodSeconds != nil {
		v.Set("gracePeriodSeconds", strconv.FormatInt(*p.GracePeriodSeconds, 10))
	}
	if p.PropagationPolicy != "" {
		v.Set("propagationPolicy", p.PropagationPolicy)
	}
	return v
}
