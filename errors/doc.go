/*
Package errors implements coded errors for cattery.

Every failure returned by a handler or a controller should wrap one of
the root errors registered with Register. The code of the root error is
returned to the client as the ABCI code, so clients can distinguish
failures without parsing messages.

Extensions declare their own root errors using Register(code, description),
picking a code range that is not used by any other extension. The kitties
extension uses 800-809, the cash extension 810-819.

Use Wrap or Wrapf at the point of failure to attach context and a
stacktrace. Wrapping more than once records only the innermost stacktrace.
Test for a kind of failure with ErrXyz.Is(err).

	%s and %v print the error message
	%+v prints the message together with the stacktrace of the creation point
*/
package errors
