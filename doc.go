/*
Package cfgconv converts dynamically shaped configuration values into typed
Go values and reports every conversion problem it finds, not just the first.

A configuration value (see package value) is a boolean, an
arbitrary-precision decimal number, a text string, or an ordered list of
values. Conversions are built from three kinds of parser:

 1. Parser converts a value that is known to be present.
 2. OptionalParser converts a slot that may be absent, such as a key
    looked up in a document.
 3. ListParser consumes elements from the front of a list and hands the
    remainder to the next step, so that fixed shapes like tuples can be
    expressed positionally.

Every parse returns a payload (or none) together with an ordered collection
of diagnostics. A parse may succeed and still carry diagnostics, for
example when a lenient tuple leaves elements unconsumed.

Example of decoding a required port and an optional list of endpoints:

	doc, err := hclsource.Load("server.hcl")
	if err != nil {
		// handle error
	}

	port, ok, errs := cfgconv.Required(cfgconv.Uint16()).Run(doc.Lookup("port"))
	if !ok {
		// errs lists every problem with "port"
	}

	endpoint := cfgconv.Tuple2(cfgconv.String(), cfgconv.Uint16())
	endpoints := cfgconv.Default(cfgconv.SliceOf(endpoint), nil)
	eps, _, errs := endpoints.Run(doc.Lookup("endpoints"))

Parsers compose with Bind, Map and Both for sequencing and with Or and OneOf
for fallback. Fallback is asymmetric: a first attempt that failed without
diagnostics hands over to the alternative entirely, a first attempt that
failed with diagnostics has them joined with the alternative's only if the
alternative fails too.

A Catalog resolves type expressions such as "list(tuple(string, int8))" to
parsers at run time.
*/
package cfgconv
