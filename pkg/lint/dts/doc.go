// Package dts checks the style of Devicetree sources (.dts, .dtsi, .dtso).
//
// The checker reads a file line by line without building a tree. Each line is
// classified by package scan; node and label headers are checked for
// whitespace, casing and separator conventions, and compared against the
// previous header at the same nesting depth to catch unsorted siblings.
//
// Usage:
//
//	c, err := dts.New("arch/arm64/boot/dts/board.dts")
//	if err != nil {
//		return err
//	}
//	if err := c.Check(ctx); err != nil {
//		return err
//	}
//	for _, w := range c.Warnings() {
//		fmt.Printf("%s:%d: %s\n", c.Path(), w.Line, w.Message)
//	}
//
// Multi-line node headers and diff/patch input are not supported. New rejects
// .diff and .patch paths with ErrPatchFile.
package dts
