/* Package main: objforth -- a small FORTH over an object heap

Unlike a classic FORTH, whose stack holds machine words that index one flat
memory, every value here is an object: a number, a string, a table, an
array, a hash, a stack, or a word. Objects live in a heap of fixed
capacity; when it fills, a mark and sweep collector reclaims every object
that is no longer reachable from the VM. References are handles carrying a
generation, so a reference that outlives its object is detected rather
than silently aliasing whatever reuses the slot.

Source is compiled one unit at a time. A unit is compiled into an anonymous
word, and any colon definitions it makes are collected aside until the whole
unit compiles; only then do they join the dictionary and the unit run. A
compile failure discards the unit's definitions; a run time failure keeps
them. Either way the stacks are cleared and the VM is ready for the next unit.

Control structures exist only at compile time. The words if, else, then,
do, loop, begin, while and repeat are immediate: they emit branches with
placeholder offsets and record an open marker, which the closing word pops
and patches. At run time only (branch), (zbranch), (do) and (loop) remain.

Containers are reached through @ and !. With a bare address they work on the
address as a whole: a variable's value, a table's count, a stack's top. To
reach inside a container, pair it with an index using ] first:

	{} constant t
	10 t 0 ] !        \ t[0] = 10
	20 t " k" ] !     \ t["k"] = 20
	t 0 ] @ .         \ prints 10
	t @ .             \ prints 1, the array part's length

The built in words are listed in prims.go and control.go; prelude.go builds
a few more in the language itself.

*/
package main
