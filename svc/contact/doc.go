// Package contact implements the relay behind the website contact form.
//
// A submission goes through a fixed pipeline: the per-IP rate check, field
// validation, then dispatch of a rendered HTML email to the configured
// recipient. The first failing step ends the pipeline and its error tells
// the caller which response to give:
//
//	receipt, err := svc.Submit(ctx, ip, req)
//	switch {
//	case errors.Is(err, contact.ErrRateLimitExceeded): // 429
//	case errors.Is(err, contact.ErrValidation):        // 400
//	case errors.Is(err, contact.ErrDispatch):          // 500, with DispatchError.Code
//	case err != nil:                                    // 500, generic
//	}
//
// Rate checking happens before validation, so malformed submissions still
// count toward the limit.
package contact
