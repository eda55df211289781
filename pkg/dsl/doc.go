/*
Package dsl parses the trigger scripting language of spec §4.8: an
event-declaration block and a single-branch-with-optional-else rule
body, producing the AST types pkg/types already defines (Condition,
Action, Rule).

Parsing is deliberately hand-rolled string scanning — literal
substring search, bracket/brace extraction, comma and operator
splitting — rather than a combinator or grammar library, mirroring the
source this grammar was distilled from. The condition grammar has no
operator precedence: "&&" and "||" split greedily left-to-right, at
the leftmost combinator. Parentheses for grouping are not supported.
*/
package dsl
