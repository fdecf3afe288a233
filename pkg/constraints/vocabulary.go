// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package constraints

// Current vocabulary.
var (
	Range             = NewKind(NamespaceCurrent, "Range")
	Length            = NewKind(NamespaceCurrent, "Length")
	NotEmpty          = NewKind(NamespaceCurrent, "NotEmpty")
	CurrentPattern    = NewKind(NamespaceCurrent, "Pattern")
	CurrentDecimalMin = NewKind(NamespaceCurrent, "DecimalMin")
	CurrentDecimalMax = NewKind(NamespaceCurrent, "DecimalMax")
	Semantic          = NewKind(NamespaceCurrent, "Semantic")
	CreditCardNumber  = NewKind(NamespaceCurrent, "CreditCardNumber")
	EAN               = NewKind(NamespaceCurrent, "EAN")
	ISBN              = NewKind(NamespaceCurrent, "ISBN")
	URL               = NewKind(NamespaceCurrent, "URL")
	UUID              = NewKind(NamespaceCurrent, "UUID")
)

// Legacy vocabulary.
var (
	AssertTrue      = NewKind(NamespaceLegacy, "AssertTrue")
	AssertFalse     = NewKind(NamespaceLegacy, "AssertFalse")
	Null            = NewKind(NamespaceLegacy, "Null")
	Future          = NewKind(NamespaceLegacy, "Future")
	FutureOrPresent = NewKind(NamespaceLegacy, "FutureOrPresent")
	Past            = NewKind(NamespaceLegacy, "Past")
	PastOrPresent   = NewKind(NamespaceLegacy, "PastOrPresent")
	Min             = NewKind(NamespaceLegacy, "Min")
	Max             = NewKind(NamespaceLegacy, "Max")
	DecimalMin      = NewKind(NamespaceLegacy, "DecimalMin")
	DecimalMax      = NewKind(NamespaceLegacy, "DecimalMax")
	Pattern         = NewKind(NamespaceLegacy, "Pattern")
	Size            = NewKind(NamespaceLegacy, "Size")
	Positive        = NewKind(NamespaceLegacy, "Positive")
	PositiveOrZero  = NewKind(NamespaceLegacy, "PositiveOrZero")
	Negative        = NewKind(NamespaceLegacy, "Negative")
	NegativeOrZero  = NewKind(NamespaceLegacy, "NegativeOrZero")
	NotBlank        = NewKind(NamespaceLegacy, "NotBlank")
	Email           = NewKind(NamespaceLegacy, "Email")
)

// Parameter names.
const (
	ParamMin          = "min"
	ParamMax          = "max"
	ParamMinInclusive = "min_inclusive"
	ParamMaxInclusive = "max_inclusive"
	ParamValue        = "value"
	ParamInclusive    = "inclusive"
	ParamRegex        = "regex"
	ParamCategory     = "category"
	ParamBin          = "bin"
	ParamLength       = "length"
	ParamType         = "type"
	ParamProtocol     = "protocol"
	ParamHost         = "host"
	ParamPort         = "port"
)

// Definition describes a constraint kind of a vocabulary.
type Definition struct {
	Kind        Kind
	Params      []string
	Description string
}

var currentDefinitions = []Definition{
	{
		Kind:        Range,
		Params:      []string{ParamMin, ParamMax, ParamMinInclusive, ParamMaxInclusive},
		Description: "number between min and max, both bounds are inclusive unless stated otherwise",
	},
	{
		Kind:        Length,
		Params:      []string{ParamMin, ParamMax},
		Description: "string or collection with length between min and max (max defaults to 255)",
	},
	{
		Kind:        NotEmpty,
		Description: "string or collection with at least one element",
	},
	{
		Kind:        CurrentPattern,
		Params:      []string{ParamRegex},
		Description: "string that fully matches the regular expression",
	},
	{
		Kind:        CurrentDecimalMin,
		Params:      []string{ParamValue, ParamInclusive},
		Description: "number not lower than value, may be combined with DecimalMax",
	},
	{
		Kind:        CurrentDecimalMax,
		Params:      []string{ParamValue, ParamInclusive},
		Description: "number not greater than value, may be combined with DecimalMin",
	},
	{
		Kind:        Semantic,
		Params:      []string{ParamCategory},
		Description: "realistic value of the category produced by the locale provider of the slot",
	},
	{
		Kind:        CreditCardNumber,
		Params:      []string{ParamBin, ParamLength},
		Description: "card number starting with the bin and ending with the Luhn check digit",
	},
	{
		Kind:        EAN,
		Params:      []string{ParamType},
		Description: "EAN-13 or EAN-8 barcode with a valid check digit",
	},
	{
		Kind:        ISBN,
		Description: "ISBN-13 number formatted as 978-ddd-ddd-ddd-d",
	},
	{
		Kind:        URL,
		Params:      []string{ParamProtocol, ParamHost, ParamPort},
		Description: "URL of the given protocol, host and port",
	},
	{
		Kind:        UUID,
		Description: "random version 4 UUID",
	},
}

var legacyDefinitions = []Definition{
	{Kind: AssertTrue, Description: "true"},
	{Kind: AssertFalse, Description: "false"},
	{Kind: Null, Description: "nil value of a nillable type"},
	{Kind: Future, Description: "instant after the reference time"},
	{Kind: FutureOrPresent, Description: "instant not before the reference time"},
	{Kind: Past, Description: "instant before the reference time"},
	{Kind: PastOrPresent, Description: "instant not after the reference time"},
	{
		Kind:        Min,
		Params:      []string{ParamValue},
		Description: "integer not lower than value, may be combined with Max",
	},
	{
		Kind:        Max,
		Params:      []string{ParamValue},
		Description: "integer not greater than value, may be combined with Min",
	},
	{
		Kind:        DecimalMin,
		Params:      []string{ParamValue, ParamInclusive},
		Description: "number not lower than value, may be combined with DecimalMax",
	},
	{
		Kind:        DecimalMax,
		Params:      []string{ParamValue, ParamInclusive},
		Description: "number not greater than value, may be combined with DecimalMin",
	},
	{
		Kind:        Pattern,
		Params:      []string{ParamRegex},
		Description: "string that fully matches the regular expression",
	},
	{
		Kind:        Size,
		Params:      []string{ParamMin, ParamMax},
		Description: "string or collection with size between min and max",
	},
	{Kind: Positive, Description: "number greater than zero"},
	{Kind: PositiveOrZero, Description: "number greater than or equal to zero"},
	{Kind: Negative, Description: "number lower than zero"},
	{Kind: NegativeOrZero, Description: "number lower than or equal to zero"},
	{Kind: NotBlank, Description: "string with at least one non whitespace character"},
	{
		Kind:        Email,
		Params:      []string{ParamRegex},
		Description: "email address, optionally matching the regular expression",
	},
}

var known = func() map[Kind]Definition {
	res := make(map[Kind]Definition, len(currentDefinitions)+len(legacyDefinitions))
	for _, d := range currentDefinitions {
		res[d.Kind] = d
	}
	for _, d := range legacyDefinitions {
		res[d.Kind] = d
	}
	return res
}()

// Definitions returns the definitions of the namespace in declaration order.
func Definitions(ns Namespace) []Definition {
	var defs []Definition
	switch ns {
	case NamespaceCurrent:
		defs = currentDefinitions
	case NamespaceLegacy:
		defs = legacyDefinitions
	}
	res := make([]Definition, len(defs))
	copy(res, defs)
	return res
}

func Lookup(k Kind) (Definition, bool) {
	d, ok := known[k]
	return d, ok
}

func IsKnown(k Kind) bool {
	_, ok := known[k]
	return ok
}
