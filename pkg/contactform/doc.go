// Package contactform is the client side of the contact relay.
//
// Client speaks HTTP to a relay: Probe checks /api/health with a short
// timeout and Send posts a ContactRequest to /api/contact. Form keeps the
// in-progress request and the UI state around a submission:
//
//	form := contactform.NewForm(client, contactform.WithOnChange(render))
//	_ = form.Set(contact.FieldName, "Jane")
//	...
//	res, err := form.Submit(ctx)
//
// Every submission ends in a tagged Result. When the probe fails the form
// waits SimulatedDelay and reports StatusSimulatedDelivered without sending
// anything, so callers can tell real delivery from the masked path. After a
// success the form clears itself once the reset delay has passed
// (PageResetDelay or ModalResetDelay). Only one submission runs at a time.
package contactform
