package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const smsAPIURL = "https://api.africastalking.com/version1/messaging"

func sendSMS(message string, recipients []string) error {
	username := os.Getenv("AT_USERNAME")
	apiKey := os.Getenv("AT_API_KEY")

	if username == "" {
		return fmt.Errorf("africa's talking username not set")
	}
	if apiKey == "" {
		return fmt.Errorf("africa's talking API key not set")
	}

	data := url.Values{}
	data.Set("username", username)
	data.Set("to", strings.Join(recipients, ","))
	data.Set("message", message)

	req, err := http.NewRequest("POST", smsAPIURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", apiKey)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send SMS: status code %d", resp.StatusCode)
	}

	return nil
}

// SendOTPSMS delivers a login code to the given phone number.
func SendOTPSMS(phone, code string) error {
	msg := fmt.Sprintf("%s is your Farmate verification code. Do not share it with anyone.", code)
	return sendSMS(msg, []string{phone})
}

// SendBookingNotificationSMS tells a driver their vehicle has been booked.
func SendBookingNotificationSMS(driverPhone, vehicleType, farmerName string) error {
	msg := fmt.Sprintf("Your %s has been booked by %s. Please log in to confirm the booking.",
		vehicleType, farmerName)
	return sendSMS(msg, []string{driverPhone})
}
