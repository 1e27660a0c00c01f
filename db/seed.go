// ABOUTME: Loads the demo contacts, opportunities and NPS responses
// ABOUTME: Meant for an empty database; sample ids are fixed so a second run fails
package db

import (
	"database/sql"

	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/nps"
)

// Seed inserts the sample CRM and NPS data. It is meant for an empty
// database; running it twice fails on duplicate ids.
func Seed(db *sql.DB) error {
	for _, c := range crm.SampleContacts() {
		c := c
		if err := CreateContact(db, &c); err != nil {
			return err
		}
	}
	for _, o := range crm.SampleOpportunities() {
		o := o
		if err := CreateOpportunity(db, &o); err != nil {
			return err
		}
	}
	for _, r := range nps.SampleResponses() {
		r := r
		if err := CreateNPSResponse(db, &r); err != nil {
			return err
		}
	}
	return nil
}
