// Package naming derives stack names from example directory names. The
// directory name is the only stable identifier an example carries; the
// entry-point source has no contract worth scraping.
package naming

import (
	"strings"

	"github.com/fatih/camelcase"
)

// StackName converts an example directory name into its conventional stack
// name: "simple-codebuild" becomes "SimpleCodebuild".
func StackName(dirName string) string {
	parts := strings.FieldsFunc(dirName, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		low := strings.ToLower(p)
		b.WriteString(strings.ToUpper(low[:1]) + low[1:])
	}
	return b.String()
}

// DisplayName splits a CamelCase stack name into words for report headers:
// "SimpleCodebuild" becomes "Simple Codebuild".
func DisplayName(stackName string) string {
	return strings.Join(camelcase.Split(stackName), " ")
}
