/*
Package rules implements the rule evaluator and dispatcher of spec
§4.9: given a decoded event addressed to a contract, it loads that
contract's triggers, evaluates each trigger's rules against the event,
and executes the resulting actions against the document store.

Dispatch (dispatcher.go) is the system's second long-lived task,
alongside the chain subscriber (pkg/chain): it drains a bounded channel
of decoded events and spawns one goroutine per matching, active
trigger. Evaluation (evaluate.go) walks a Rule's Condition tree against
an EventData's fields with no side effects. Execution (execute.go)
turns a matched rule's actions into document-store calls, substituting
"events.<Name>.<field>" placeholders with post-processed values
(postprocess.go) drawn from the firing event.
*/
package rules
