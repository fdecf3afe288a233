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
	"fmt"
	"sync"

	"github.com/go-faker/faker/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/greenmaskio/greenrand/pkg/generators"
	"github.com/greenmaskio/greenrand/pkg/generators/randomizers"
)

// faker keeps its random source in a package variable, so every provider switches it under this lock.
var fakerMx sync.Mutex

type regionFormats struct {
	phone      string
	postalCode string
}

var formatsByRegion = map[string]regionFormats{
	"US": {phone: `\(\d{3}\) \d{3}-\d{4}`, postalCode: `\d{5}`},
	"CA": {phone: `\(\d{3}\) \d{3}-\d{4}`, postalCode: `[ABCEGHJ-NPRSTVXY]\d[A-Z] \d[A-Z]\d`},
	"GB": {phone: `07\d{3} \d{6}`, postalCode: `[A-Z]{2}\d{1,2} \d[A-Z]{2}`},
	"DE": {phone: `0\d{3} \d{7}`, postalCode: `\d{5}`},
	"FR": {phone: `0[1-9]( \d{2}){4}`, postalCode: `\d{5}`},
	"ES": {phone: `[67]\d{2} \d{3} \d{3}`, postalCode: `\d{5}`},
	"IT": {phone: `3\d{2} \d{3} \d{4}`, postalCode: `\d{5}`},
	"RU": {phone: `\+7 \d{3} \d{3}-\d{2}-\d{2}`, postalCode: `\d{6}`},
	"CN": {phone: `1[3-9]\d{9}`, postalCode: `\d{6}`},
	"JP": {phone: `0\d{2}-\d{4}-\d{4}`, postalCode: `\d{3}-\d{4}`},
	"IN": {phone: `[6-9]\d{9}`, postalCode: `[1-9]\d{5}`},
	"BR": {phone: `\(\d{2}\) 9\d{4}-\d{4}`, postalCode: `\d{5}-\d{3}`},
}

// FakerProvider produces values with go-faker. Phone numbers, postal codes and country names follow the
// region of the locale when the region is known.
type FakerProvider struct {
	locale     Locale
	mx         sync.Mutex
	src        *generators.Source
	phone      *randomizers.RegexRandomizer
	postalCode *randomizers.RegexRandomizer
}

func NewFakerProvider(locale Locale) (Provider, error) {
	src := generators.NewSource(locale.Seed)
	p := &FakerProvider{
		locale: locale,
		src:    src,
	}
	if f, ok := formatsByRegion[locale.Region.String()]; ok {
		var err error
		p.phone, err = randomizers.NewRegexRandomizer(src.Child(), f.phone, randomizers.DefaultMaxRepeat)
		if err != nil {
			return nil, fmt.Errorf("phone format of %s: %w", locale.Key, err)
		}
		p.postalCode, err = randomizers.NewRegexRandomizer(src.Child(), f.postalCode, randomizers.DefaultMaxRepeat)
		if err != nil {
			return nil, fmt.Errorf("postal code format of %s: %w", locale.Key, err)
		}
	}
	return p, nil
}

func (p *FakerProvider) ValueFor(category Category) (any, error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	fakerMx.Lock()
	defer fakerMx.Unlock()
	faker.SetRandomSource(faker.NewSafeSource(fakerSource{p.src}))
	faker.SetCryptoSource(p.src)

	switch category {
	case CategoryName:
		return faker.Name(), nil
	case CategoryFirstName:
		return faker.FirstName(), nil
	case CategoryLastName:
		return faker.LastName(), nil
	case CategoryPerson:
		return p.person(), nil
	case CategoryUsername:
		return faker.Username(), nil
	case CategoryEmail:
		return faker.Email(), nil
	case CategoryPhone:
		return p.phoneNumber(), nil
	case CategoryAddress:
		return p.address(), nil
	case CategoryStreet:
		return faker.GetRealAddress().Address, nil
	case CategoryCity:
		return faker.GetRealAddress().City, nil
	case CategoryState:
		return faker.GetRealAddress().State, nil
	case CategoryPostalCode:
		return p.postal(faker.GetRealAddress().PostalCode), nil
	case CategoryCountry:
		return p.countryName(), nil
	case CategoryCountryCode:
		return p.locale.Region.String(), nil
	case CategoryLanguage:
		return display.Self.Name(p.locale.Tag), nil
	case CategoryLatitude:
		return faker.Latitude(), nil
	case CategoryLongitude:
		return faker.Longitude(), nil
	case CategoryURL:
		return faker.URL(), nil
	case CategoryDomainName:
		return faker.DomainName(), nil
	case CategoryIPv4:
		return faker.IPv4(), nil
	case CategoryIPv6:
		return faker.IPv6(), nil
	case CategoryMacAddress:
		return faker.MacAddress(), nil
	case CategoryWord:
		return faker.Word(), nil
	case CategorySentence:
		return faker.Sentence(), nil
	case CategoryParagraph:
		return faker.Paragraph(), nil
	case CategoryCCNumber:
		return faker.CCNumber(), nil
	case CategoryCCType:
		return faker.CCType(), nil
	case CategoryCurrency:
		return faker.Currency(), nil
	case CategoryTimezone:
		return faker.Timezone(), nil
	case CategoryUnixTime:
		return faker.UnixTime(), nil
	case CategoryDate:
		return faker.Date(), nil
	}
	return nil, fmt.Errorf("category %q: %w", category, ErrUnsupportedCategory)
}

func (p *FakerProvider) person() Person {
	return Person{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Email:     faker.Email(),
		Phone:     p.phoneNumber(),
		Username:  faker.Username(),
	}
}

func (p *FakerProvider) address() Address {
	addr := faker.GetRealAddress()
	return Address{
		Street:     addr.Address,
		City:       addr.City,
		State:      addr.State,
		PostalCode: p.postal(addr.PostalCode),
		Country:    p.countryName(),
		Latitude:   addr.Coordinates.Latitude,
		Longitude:  addr.Coordinates.Longitude,
	}
}

func (p *FakerProvider) phoneNumber() string {
	if p.phone == nil {
		return faker.Phonenumber()
	}
	return p.phone.Next()
}

func (p *FakerProvider) postal(fallback string) string {
	if p.postalCode == nil {
		return fallback
	}
	return p.postalCode.Next()
}

func (p *FakerProvider) countryName() string {
	if name := display.Regions(p.locale.Tag).Name(p.locale.Region); name != "" {
		return name
	}
	return display.Regions(language.English).Name(p.locale.Region)
}

// fakerSource exposes a Source as math/rand Source64 for faker.
type fakerSource struct {
	src *generators.Source
}

func (s fakerSource) Int63() int64 {
	return int64(s.src.Uint64() >> 1)
}

func (s fakerSource) Uint64() uint64 {
	return s.src.Uint64()
}

// Seed is a no-op: the stream is fixed by the locale seed.
func (s fakerSource) Seed(int64) {}
