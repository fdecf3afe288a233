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

package semantic

import (
	"errors"
	"slices"
)

var (
	ErrUnsupportedCategory = errors.New("unsupported semantic category")
	ErrMalformedLocale     = errors.New("malformed locale")
)

type Category string

const (
	CategoryName        Category = "name"
	CategoryFirstName   Category = "first_name"
	CategoryLastName    Category = "last_name"
	CategoryPerson      Category = "person"
	CategoryUsername    Category = "username"
	CategoryEmail       Category = "email"
	CategoryPhone       Category = "phone"
	CategoryAddress     Category = "address"
	CategoryStreet      Category = "street"
	CategoryCity        Category = "city"
	CategoryState       Category = "state"
	CategoryPostalCode  Category = "postal_code"
	CategoryCountry     Category = "country"
	CategoryCountryCode Category = "country_code"
	CategoryLanguage    Category = "language"
	CategoryLatitude    Category = "latitude"
	CategoryLongitude   Category = "longitude"
	CategoryURL         Category = "url"
	CategoryDomainName  Category = "domain_name"
	CategoryIPv4        Category = "ipv4"
	CategoryIPv6        Category = "ipv6"
	CategoryMacAddress  Category = "mac_address"
	CategoryWord        Category = "word"
	CategorySentence    Category = "sentence"
	CategoryParagraph   Category = "paragraph"
	CategoryCCNumber    Category = "cc_number"
	CategoryCCType      Category = "cc_type"
	CategoryCurrency    Category = "currency"
	CategoryTimezone    Category = "timezone"
	CategoryUnixTime    Category = "unix_time"
	CategoryDate        Category = "date"
)

var categories = []Category{
	CategoryName, CategoryFirstName, CategoryLastName, CategoryPerson, CategoryUsername, CategoryEmail,
	CategoryPhone, CategoryAddress, CategoryStreet, CategoryCity, CategoryState, CategoryPostalCode,
	CategoryCountry, CategoryCountryCode, CategoryLanguage, CategoryLatitude, CategoryLongitude,
	CategoryURL, CategoryDomainName, CategoryIPv4, CategoryIPv6, CategoryMacAddress, CategoryWord,
	CategorySentence, CategoryParagraph, CategoryCCNumber, CategoryCCType, CategoryCurrency,
	CategoryTimezone, CategoryUnixTime, CategoryDate,
}

// Categories returns every category known by the default provider.
func Categories() []Category {
	return slices.Clone(categories)
}

func IsKnown(c Category) bool {
	return slices.Contains(categories, c)
}
