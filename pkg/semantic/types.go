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

// Address is produced for the address category and for slots of this type.
type Address struct {
	Street     string  `json:"street" yaml:"street"`
	City       string  `json:"city" yaml:"city"`
	State      string  `json:"state" yaml:"state"`
	PostalCode string  `json:"postal_code" yaml:"postal_code"`
	Country    string  `json:"country" yaml:"country"`
	Latitude   float64 `json:"latitude" yaml:"latitude"`
	Longitude  float64 `json:"longitude" yaml:"longitude"`
}

// Person is produced for the person category and for slots of this type.
type Person struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Username  string `json:"username" yaml:"username"`
}
