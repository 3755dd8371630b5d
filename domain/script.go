package domain

// ScriptSelection is the outcome of choosing a lifecycle script for one
// operation and scope. Path is empty when no candidate exists.
type ScriptSelection struct {
	Operation Operation
	Scope     Scope
	Path      string
}

// Found reports whether a script was selected.
func (s ScriptSelection) Found() bool { return s.Path != "" }

// operationStems maps each operation to its accepted filename stems, in
// priority order.
var operationStems = map[Operation][]string{
	OpSetup:  {"setup", "install"},
	OpRemove: {"remove", "uninstall"},
	OpUpdate: {"update", "upgrade"},
	OpCheck:  {"check", "check-updates"},
}

// scriptExtensions lists the accepted script types, in priority order.
var scriptExtensions = []string{".sh", ".py"}

// ScriptCandidates returns every filename that can serve the given operation
// and scope, best match first: scope-suffixed names before generic ones, and
// within each tier shell scripts before interpreted ones.
func ScriptCandidates(op Operation, scope Scope) []string {
	stems := operationStems[op]
	candidates := make([]string, 0, 2*len(stems)*len(scriptExtensions))

	for _, ext := range scriptExtensions {
		for _, stem := range stems {
			candidates = append(candidates, stem+"-"+string(scope)+ext)
		}
	}
	for _, ext := range scriptExtensions {
		for _, stem := range stems {
			candidates = append(candidates, stem+ext)
		}
	}
	return candidates
}

// SelectScript chooses the lifecycle script to run for an operation and scope
// given the file names present in a repository root. Selection is pure and
// deterministic. An update operation with no candidate of its own falls back
// to the setup selection (updates re-run setup); for every other operation an
// empty selection means "no script to run" and is not an error.
func SelectScript(files []string, op Operation, scope Scope) ScriptSelection {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	selection := ScriptSelection{Operation: op, Scope: scope}
	for _, candidate := range ScriptCandidates(op, scope) {
		if present[candidate] {
			selection.Path = candidate
			return selection
		}
	}

	if op == OpUpdate {
		fallback := SelectScript(files, OpSetup, scope)
		if fallback.Found() {
			selection.Path = fallback.Path
		}
	}
	return selection
}
