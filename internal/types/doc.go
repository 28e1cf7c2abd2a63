/*
Package types defines core data structures shared by the diffreq packages.

# Overview

The types package provides shared type definitions for:
  - Request profiles loaded from xdiff/xreq config documents
  - Response filter settings
  - Override arguments supplied on the command line
  - Resolved requests and captured responses
  - The error taxonomy

# Profiles

RequestProfile:
  - One HTTP request template (method, url, params, headers, body)
  - params and body are value.Value so their JSON shape is explicit
  - Headers are stored under canonical names, last write wins

DiffProfile:
  - req1 and req2 request templates
  - res: ResponseProfile applied to both responses

ResponseProfile:
  - skip_headers: response header names left out of the comparison
  - skip_body: top-level JSON keys removed before comparison

# Overrides

KeyVal is one parsed `-e` argument. ExtraArgs groups them by target
(query, header, body) while keeping their order, so the last value of a
duplicated key wins.

# Errors

Every failure wraps one of the sentinel errors:
  - ErrConfigParse: malformed document
  - ErrProfileValidation (ErrBodyShape, ErrParamsShape, ErrInvalidURL)
  - ErrProfileNotFound (NotFoundError)
  - ErrOverrideParse
  - ErrUnsupportedContentType
  - ErrNetwork (StatusError for non-success status codes)
  - ErrResponseDecode (ErrUnsupportedJSONShape)
  - ErrDiffRender

SideError names the request (req1 or req2) that failed during a diff run.

# Example Config

	todo:
	  req1:
	    url: https://jsonplaceholder.typicode.com/todos/1
	    params:
	      a: 100
	  req2:
	    method: GET
	    url: https://jsonplaceholder.typicode.com/todos/2
	    headers:
	      X-Trace: abc
	  res:
	    skip_headers:
	      - date
	      - x-ratelimit-remaining
	    skip_body:
	      - id

# Type Safety

Profiles are immutable after loading and safe for concurrent reads.
Resolving a request works on copies and never mutates the profile.
*/
package types
