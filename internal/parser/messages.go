package parser

// Diagnostic message texts. The wording follows the canonical
// route-template diagnostics so tooling built on other implementations
// of the grammar reads the same.
const (
	MsgMismatchedParameter = "There is an incomplete parameter in the route template. Check that each '{' character has a matching '}' character."

	MsgInvalidParameterName = "The route parameter name '' is invalid. Route parameter names must be non-empty and cannot contain these characters: '{', '}', '/'."

	MsgMissingDefaultValue = "A default value is expected after the '=' sign."

	MsgConsecutiveSeparators = "The route template separator character '/' cannot appear consecutively. It must be separated by either a parameter or a literal value."

	MsgConsecutiveParameters = "A path segment cannot contain two consecutive parameters. They must be separated by a '/' or by a literal string."

	MsgInvalidLeadingTilde = "The route template cannot start with a '~' character unless followed by a '/'."

	MsgCatchAllMustBeLast = "A catch-all parameter can only appear as the last segment of the route template."

	MsgCatchAllInMultiSegment = "A path segment that contains more than one section, such as a literal section or a parameter, cannot contain a catch-all parameter."

	MsgOptionalCannotHaveDefault = "An optional parameter cannot have default value."

	MsgCatchAllCannotBeOptional = "A catch-all parameter cannot be marked optional."
)

// Formatted message templates.
const (
	fmtRepeatedParameter = "The route parameter name '%s' appears more than one time in the route template."

	fmtOptionalMustBeLast = "An optional parameter must be at the end of the segment. In the segment '%s', optional parameter '%s' is followed by '%s'."

	fmtOptionalPrecededByPeriod = "In the segment '%s', the optional parameter '%s' is preceded by an invalid segment '%s'. Only a period (.) can precede an optional parameter."
)
